package config

import "github.com/gdamore/tcell/v2"

type Styles struct {
	Frame  Frame  `yaml:"frame"`
	Table  Table  `yaml:"table"`
	Prompt Prompt `yaml:"prompt"`
	Toast  Toast  `yaml:"toast"`
}

type (
	Frame struct {
		BorderColor Color `yaml:"borderColor"`
		TitleColor  Color `yaml:"titleColor"`
	}
	Table struct {
		FgColor       Color       `yaml:"fgColor"`
		BgColor       Color       `yaml:"bgColor"`
		CursorFgColor Color       `yaml:"cursorFgColor"`
		CursorBgColor Color       `yaml:"cursorBgColor"`
		MarkColor     Color       `yaml:"markColor"`
		BusyColor     Color       `yaml:"busyColor"`
		Header        TableHeader `yaml:"header"`
	}

	TableHeader struct {
		FgColor     Color `yaml:"fgColor"`
		BgColor     Color `yaml:"bgColor"`
		SorterColor Color `yaml:"sorterColor"`
	}

	Prompt struct {
		FgColor Color `yaml:"fgColor"`
		BgColor Color `yaml:"bgColor"`
	}

	Toast struct {
		SuccessColor Color `yaml:"successColor"`
		ErrorColor   Color `yaml:"errorColor"`
	}
)

type Color string

// Color returns a view color.
func (c Color) Color() tcell.Color {
	if c == "default" || c == "" {
		return tcell.ColorDefault
	}

	return tcell.GetColor(string(c)).TrueColor()
}

var PresetStyles = Styles{
	Frame: Frame{
		BorderColor: "dodgerblue",
		TitleColor:  "#ffffff",
	},
	Table: Table{
		FgColor:       "#ffffff",
		BgColor:       "default",
		CursorFgColor: "#ffffff",
		CursorBgColor: "#333333",
		MarkColor:     "#f72972", // magenta
		BusyColor:     "#f0c674",
		Header: TableHeader{
			FgColor:     "#ffffff",
			BgColor:     "#001529",
			SorterColor: "dodgerblue",
		},
	},
	Prompt: Prompt{
		FgColor: "#ffffff",
		BgColor: "default",
	},
	Toast: Toast{
		SuccessColor: "#52c41a",
		ErrorColor:   "#ff4d4f",
	},
}
