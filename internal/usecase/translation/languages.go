package translation

import "github.com/longduongbao29/Translator-app/internal/domain"

var supportedLanguages = []domain.Language{
	{Code: "auto", Name: "Auto Detect", NativeName: "Auto Detect"},
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "ko", Name: "Korean", NativeName: "한국어"},
	{Code: "zh", Name: "Chinese", NativeName: "中文"},
}
