package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	// DevLogin sets the session cookie for ?uid= when dev login is on.
	DevLogin(c echo.Context) error
	WhoAmI(c echo.Context) error
}
