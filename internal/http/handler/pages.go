package handler

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"regapi/internal/model"
	"regapi/internal/service"
	"regapi/internal/validation"
	"regapi/internal/web"
)

func renderPage(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := web.Templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Type("html")
	return c.Send(buf.Bytes())
}

// Index serves the server-rendered registration form.
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, "index.html", nil)
	}
}

// Terms serves the terms and conditions page.
func Terms() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, "terms.html", nil)
	}
}

// SubmitForm is the legacy non-JSON form endpoint. It duplicates the
// API's validation (plus confirm-password and terms checks that only
// exist on the HTML form) and answers with a rendered success or error
// page instead of an envelope.
func SubmitForm(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		args := c.Request().PostArgs()

		var interests model.StringList
		for _, v := range args.PeekMulti("interests") {
			interests = append(interests, string(v))
		}

		in := validation.SubmissionInput{
			FirstName: c.FormValue("firstName"),
			LastName:  c.FormValue("lastName"),
			Email:     c.FormValue("email"),
			Phone:     c.FormValue("phone"),
			Password:  c.FormValue("password"),
			Age:       model.FlexIntFromString(c.FormValue("age")),
			Country:   c.FormValue("country"),
			Gender:    c.FormValue("gender"),
			Interests: interests,
			Bio:       c.FormValue("bio"),
		}

		errs := formErrors(in, c.FormValue("confirmPassword"), c.FormValue("terms") != "")
		if len(errs) > 0 {
			return renderPage(c, "form_errors.html", fiber.Map{"Errors": errs})
		}

		sub, err := svc.Create(c.UserContext(), in)
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return renderPage(c, "form_errors.html", fiber.Map{"Errors": verr.Errors})
			}
			return err
		}
		return renderPage(c, "success.html", sub)
	}
}

// formErrors mirrors the API validator rule-for-rule, then adds the
// form-only checks. Unlike the API, the form requires a password.
func formErrors(in validation.SubmissionInput, confirmPassword string, termsAccepted bool) []string {
	var errs []string

	appendIf := func(failed bool, msg string) {
		if failed {
			errs = append(errs, msg)
		}
	}

	appendIf(len(strings.TrimSpace(in.FirstName)) < 2, "First name must be at least 2 characters")
	appendIf(len(strings.TrimSpace(in.LastName)) < 2, "Last name must be at least 2 characters")
	appendIf(!validation.ValidEmail(in.Email), "Invalid email address")
	appendIf(!validation.ValidPhone(in.Phone), "Invalid phone number")
	appendIf(!validation.ValidPassword(in.Password), "Password does not meet security requirements")
	appendIf(in.Password != confirmPassword, "Passwords do not match")
	appendIf(!in.Age.Valid || in.Age.Value < 18 || in.Age.Value > 120, "Age must be between 18 and 120")
	appendIf(in.Country == "", "Country is required")
	appendIf(in.Gender == "", "Gender is required")
	appendIf(!termsAccepted, "You must agree to the terms and conditions")

	return errs
}
