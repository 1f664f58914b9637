package model

// BlockKind identifies the variant of a ContentBlock.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
)

// ContentBlock is one parsed unit of user content, derived from a single input line.
// Level is 1..3 for headings and 0 for paragraphs.
type ContentBlock struct {
	Kind  BlockKind
	Level int
	Text  string
}

// Heading returns a heading block at the given level.
func Heading(level int, text string) ContentBlock {
	return ContentBlock{Kind: BlockHeading, Level: level, Text: text}
}

// Paragraph returns a body paragraph block.
func Paragraph(text string) ContentBlock {
	return ContentBlock{Kind: BlockParagraph, Text: text}
}

// IsHeading reports whether the block is a heading.
func (b ContentBlock) IsHeading() bool {
	return b.Kind == BlockHeading
}
