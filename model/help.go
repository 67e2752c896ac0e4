package model

// HelpContentEntry holds one help section with its five parallel locale
// texts. No locale is required; empty strings are stored as submitted.
type HelpContentEntry struct {
	ID      string `json:"id"`
	Section string `json:"section"`
	TextHu  string `json:"text_hu"`
	TextEn  string `json:"text_en"`
	TextSk  string `json:"text_sk"`
	TextRo  string `json:"text_ro"`
	TextPl  string `json:"text_pl"`
}

type HelpContentForm struct {
	Section string `json:"section" validate:"required"`
	TextHu  string `json:"text_hu"`
	TextEn  string `json:"text_en"`
	TextSk  string `json:"text_sk"`
	TextRo  string `json:"text_ro"`
	TextPl  string `json:"text_pl"`
}

func DecodeHelpContent(r Row) (HelpContentEntry, error) {
	var h HelpContentEntry
	var err error
	if h.ID, err = rowID(r, "id"); err != nil {
		return HelpContentEntry{}, err
	}
	if h.Section, err = rowString(r, "section"); err != nil {
		return HelpContentEntry{}, err
	}
	if h.TextHu, err = rowString(r, "text_hu"); err != nil {
		return HelpContentEntry{}, err
	}
	if h.TextEn, err = rowString(r, "text_en"); err != nil {
		return HelpContentEntry{}, err
	}
	if h.TextSk, err = rowString(r, "text_sk"); err != nil {
		return HelpContentEntry{}, err
	}
	if h.TextRo, err = rowString(r, "text_ro"); err != nil {
		return HelpContentEntry{}, err
	}
	if h.TextPl, err = rowString(r, "text_pl"); err != nil {
		return HelpContentEntry{}, err
	}
	return h, nil
}
