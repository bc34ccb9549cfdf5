package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset:       "default",
		Accent:       "#7D56F4",
		Title:        "#FAFAFA",
		Normal:       "#E0E0E0",
		Subtle:       "#888888",
		ColumnBorder: "#7D56F4",
		Warning:      "#FFA500",
		Error:        "#FF0000",
	}
}

// Monochrome returns a grayscale scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset:       "monochrome",
		Accent:       "#FFFFFF",
		Title:        "#121212",
		Normal:       "#D0D0D0",
		Subtle:       "#585858",
		ColumnBorder: "#FFFFFF",
		Warning:      "#FFFFFF",
		Error:        "#FFFFFF",
	}
}

// Kanagawa palettes

// Wave returns the dark kanagawa-wave scheme
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset:       "wave",
		Accent:       "#957FB8",
		Title:        "#1F1F28",
		Normal:       "#DCD7BA",
		Subtle:       "#727169",
		ColumnBorder: "#54546D",
		Warning:      "#FF9E3B",
		Error:        "#E82424",
	}
}

// Dragon returns the muted kanagawa-dragon scheme
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset:       "dragon",
		Accent:       "#8992A7",
		Title:        "#181616",
		Normal:       "#C5C9C5",
		Subtle:       "#737C73",
		ColumnBorder: "#625E5A",
		Warning:      "#FF9E3B",
		Error:        "#E82424",
	}
}

// Lotus returns the light kanagawa-lotus scheme
func Lotus() *ColorScheme {
	return &ColorScheme{
		Preset:       "lotus",
		Accent:       "#624C83",
		Title:        "#F2ECBC",
		Normal:       "#545464",
		Subtle:       "#8A8980",
		ColumnBorder: "#A09CAC",
		Warning:      "#E98A00",
		Error:        "#C84053",
	}
}
