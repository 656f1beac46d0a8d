package entity

// Course is the full course document. The server keeps the original
// document bytes; this type is what clients decode it into.
type Course struct {
	Summary
	Description string `json:"description"`
}
