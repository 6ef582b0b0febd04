package dto

// UpdateSettingsRequest represents the admin settings update payload.
// Both disclosure texts are mandatory; the rest is optional.
type UpdateSettingsRequest struct {
	KVKKText       string  `json:"kvkk_text" validate:"required"`
	AydinlatmaText string  `json:"aydinlatma_text" validate:"required"`
	RedirectURL    *string `json:"redirect_url,omitempty"`
	VisitorPDFPath *string `json:"visitor_pdf_path,omitempty"`
}
