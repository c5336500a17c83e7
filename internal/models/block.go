package models

import "strings"

// Block is a subsection body: a bullet list or a paragraph, never both.
type Block struct {
	Bullets []string `json:"bullets"`
	Text    *string  `json:"text"`
}

// NewBulletBlock returns nil when bullets is empty.
func NewBulletBlock(bullets []string) *Block {
	if len(bullets) == 0 {
		return nil
	}
	return &Block{Bullets: bullets}
}

// NewTextBlock returns nil when text is blank.
func NewTextBlock(text string) *Block {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &Block{Text: &text}
}

func (b *Block) IsEmpty() bool {
	return b == nil || (len(b.Bullets) == 0 && IsBlank(b.Text))
}
