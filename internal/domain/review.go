package domain

// Review is read-only here; Text is "" when the stored document has none.
type Review struct {
	ID        string
	ProductID ProductID
	Text      string
}
