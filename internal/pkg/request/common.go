package request

// ByIDRequest binds the ID path parameter shared by most detail endpoints.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
