package entities

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID    string
	Email string
	Role  string
}
