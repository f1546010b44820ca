package entity

type NewsletterSubscriber struct {
	BaseSimple
	Email    string `db:"email"`
	IsActive bool   `db:"is_active"`
}
