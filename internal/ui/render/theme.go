package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background    tcell.Color
	Foreground    tcell.Color
	HeaderFg      tcell.Color
	PromptFg      tcell.Color
	PlaceholderFg tcell.Color
	SeparatorFg   tcell.Color
	SelectionBg   tcell.Color
	SelectionFg   tcell.Color
	NameFg        tcell.Color
	NameMatchFg   tcell.Color
	GroupFg       tcell.Color
	GroupMatchFg  tcell.Color
	BufferFg      tcell.Color
	FooterBg      tcell.Color
	FooterFg      tcell.Color
	ErrorFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:    tcell.ColorDefault,
		Foreground:    tcell.ColorDefault,
		HeaderFg:      tcell.ColorDefault,
		PromptFg:      tcell.Color33,
		PlaceholderFg: tcell.ColorLightSlateGray,
		SeparatorFg:   tcell.Color240,
		SelectionBg:   tcell.Color33,
		SelectionFg:   tcell.ColorWhite,
		NameFg:        tcell.ColorDefault,
		NameMatchFg:   tcell.ColorYellow,
		GroupFg:       tcell.ColorLightSlateGray,
		GroupMatchFg:  tcell.ColorYellowGreen,
		BufferFg:      tcell.Color51,
		FooterBg:      tcell.ColorDefault,
		FooterFg:      tcell.ColorDefault,
		ErrorFg:       tcell.ColorRed,
	}
}
