package domain

type Customer struct {
	ID            int64
	Name          string
	ContactNumber string
	Email         string
}
