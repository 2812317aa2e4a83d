// Package validation validates structs with go-playground/validator tags and
// reports failures either as an *errors.AppError or as an RFC 7807
// validation problem.
//
//	type CreateUser struct {
//	    Name  string `json:"name" validate:"required,min=2"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//	if p := validation.Problem(cmd); p != nil {
//	    // render 400 with p
//	}
package validation
