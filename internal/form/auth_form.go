package form

type SignupForm struct {
	Username string
	Email    string
	Password string
	Errors   Errors
}

var signupSchema = []Field{
	{Name: "username", Validate: chain(required("enter a username"), username)},
	{Name: "email", Validate: chain(required("enter an email address"), email)},
	{Name: "password", Validate: chain(required("enter a password"), minLen(8, "password"))},
}

func NewSignupForm(username, email, password string) *SignupForm {
	return &SignupForm{
		Username: username,
		Email:    email,
		Password: password,
		Errors: runSchema(signupSchema, map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		}),
	}
}

func (f *SignupForm) Valid() bool { return !f.Errors.Any() }

type LoginForm struct {
	Username string
	Password string
	Errors   Errors
}

var loginSchema = []Field{
	{Name: "username", Validate: required("enter your username")},
	{Name: "password", Validate: required("enter your password")},
}

func NewLoginForm(username, password string) *LoginForm {
	return &LoginForm{
		Username: username,
		Password: password,
		Errors: runSchema(loginSchema, map[string]string{
			"username": username,
			"password": password,
		}),
	}
}

func (f *LoginForm) Valid() bool { return !f.Errors.Any() }
