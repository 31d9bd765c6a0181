package user

// User is the owner of a ledger. Authentication happens upstream, the id arrives with the request.
type User struct {
	Id string
}
