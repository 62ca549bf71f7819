package handler

// Form shapes bound from the account pages. Field names double as the keys
// templates use for sticky values and inline error messages.

type loginForm struct {
	Email    string `form:"account_email" validate:"required,email"`
	Password string `form:"account_password" validate:"required"`
}

type registerForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required"`
	Email     string `form:"account_email" validate:"required,email"`
	Password  string `form:"account_password" validate:"required,min=12,password"`
}

type updateAccountForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required"`
	Email     string `form:"account_email" validate:"required,email"`
}

type changePasswordForm struct {
	Password string `form:"account_password" validate:"required,min=12,password"`
}
