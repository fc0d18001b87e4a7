package domain

const (
	SettingBusinessName    = "business_name"
	SettingSlotInterval    = "slot_interval_minutes"
	SettingPrimaryColor    = "primary_color"
	SettingBackgroundColor = "background_color"
	SettingFontFamily      = "font_family"
	SettingTitleBold       = "title_bold"
	SettingTitleItalic     = "title_italic"
	SettingLogoImage       = "logo_image"
	SettingBackgroundImage = "background_image"

	DefaultBusinessName = "Barbearia"
	DefaultSlotInterval = 30
)

var AllowedFonts = []string{"Inter", "Roboto", "Montserrat", "Poppins", "Oswald"}

type ImageKind string

const (
	ImageKindLogo       ImageKind = "logo"
	ImageKindBackground ImageKind = "background"
)

// SettingKey returns the business_settings key that stores the image URL.
func (k ImageKind) SettingKey() (string, bool) {
	switch k {
	case ImageKindLogo:
		return SettingLogoImage, true
	case ImageKindBackground:
		return SettingBackgroundImage, true
	}
	return "", false
}

type Appearance struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	FontFamily      string `json:"font_family,omitempty"`
	TitleBold       bool   `json:"title_bold"`
	TitleItalic     bool   `json:"title_italic"`
}

type PublicSettings struct {
	BusinessName        string     `json:"business_name"`
	SlotIntervalMinutes int        `json:"slot_interval_minutes"`
	Appearance          Appearance `json:"appearance"`
	LogoImage           string     `json:"logo_image,omitempty"`
	BackgroundImage     string     `json:"background_image,omitempty"`
}

type UpdateBusinessNameDTO struct {
	BusinessName string `json:"business_name" binding:"required"`
}

type UpdateSlotIntervalDTO struct {
	Minutes int `json:"minutes" binding:"required,min=5,max=240"`
}

// UpdateAppearanceDTO carries colors as "#rrggbb"; they are stored as "H S% L%".
type UpdateAppearanceDTO struct {
	PrimaryColor    *string `json:"primary_color"`
	BackgroundColor *string `json:"background_color"`
	FontFamily      *string `json:"font_family"`
	TitleBold       *bool   `json:"title_bold"`
	TitleItalic     *bool   `json:"title_italic"`
}
