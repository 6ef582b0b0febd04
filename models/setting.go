package models

// Setting keys seeded at first startup.
const (
	SettingKVKKText       = "kvkk_text"
	SettingAydinlatmaText = "aydinlatma_text"
	SettingRedirectURL    = "redirect_url"
	SettingVisitorPDFPath = "visitor_pdf_path"
)

// Setting is one key/value pair of global register configuration
// (disclosure texts, optional redirect URL, optional downloadable file path).
type Setting struct {
	Key   string `gorm:"primaryKey;size:255" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// DefaultSettings returns the rows seeded when a key is missing at startup.
func DefaultSettings() []Setting {
	return []Setting{
		{Key: SettingKVKKText, Value: "Bu bir varsayılan KVKK metnidir. Lütfen admin panelinden güncelleyiniz."},
		{Key: SettingAydinlatmaText, Value: "Bu bir varsayılan Kurumsal Aydınlatma Metnidir. Lütfen admin panelinden güncelleyiniz."},
		{Key: SettingRedirectURL, Value: ""},
		{Key: SettingVisitorPDFPath, Value: ""},
	}
}
