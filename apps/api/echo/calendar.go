package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/Anupkarki12/student-management-system-sub001/core"
	"github.com/Anupkarki12/student-management-system-sub001/core/calendar"
)

var nowFunc = time.Now // mockable

type calendarApi struct {
	svc           *calendar.Service
	validate      *validator.Validate
	defaultLocale string
}

func registerCalendarAPI(g *echo.Group, svc *calendar.Service, validate *validator.Validate, defaultLocale string) {
	api := calendarApi{
		svc:           svc,
		validate:      validate,
		defaultLocale: defaultLocale,
	}

	cg := g.Group("/calendar")
	cg.GET("/coverage", api.coverage)
	cg.GET("/years/:year", api.year)
	cg.GET("/years/:year/months/:month", api.month)
	cg.POST("/to-gregorian", api.toGregorian)
	cg.POST("/to-bs", api.toBS)
	cg.GET("/format", api.format)
	cg.GET("/relative", api.relative)
	cg.GET("/numerals", api.numerals)
}

// Helpers

const headerAcceptLanguage = "Accept-Language"

// acceptedLocale returns the preferred supported locale of an Accept-Language
// header, or "" when it names none.
func acceptedLocale(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags { // highest weight first
		base, _ := tag.Base()
		if locale, err := calendar.LocaleFor(base.String()); err == nil {
			return locale.Tag()
		}
	}
	return ""
}

func intParam(ctx echo.Context, name string) (int, error) {
	n, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, core.NewFieldValidationError(errors.Errorf("%s must be an integer", name), name)
	}
	return n, nil
}

// formatter returns a formatter for the locale asked by the query, then the
// Accept-Language header, then the configured default.
func (api *calendarApi) formatter(ctx echo.Context, tag string) (*calendar.Formatter, error) {
	if tag == "" {
		tag = acceptedLocale(ctx.Request().Header.Get(headerAcceptLanguage))
	}
	if tag == "" {
		tag = api.defaultLocale
	}
	locale, err := calendar.LocaleFor(tag)
	if err != nil {
		return nil, core.NewFieldValidationError(err, "locale")
	}
	return api.svc.Formatter(locale), nil
}

func (api *calendarApi) conversion(ctx echo.Context, d calendar.Date, ad time.Time) (calendar.Conversion, error) {
	f, err := api.formatter(ctx, ctx.QueryParam("locale"))
	if err != nil {
		return calendar.Conversion{}, err
	}
	return calendar.Conversion{
		BS:          d,
		Gregorian:   ad.Format(core.DateLayout),
		Formatted:   f.FormatDate(d, ad.Weekday(), calendar.FormatOptions{Variant: calendar.Full}),
		Approximate: api.svc.IsApproximate(d.Year()),
	}, nil
}

// Handlers

func (api *calendarApi) coverage(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Coverage())
}

func (api *calendarApi) year(ctx echo.Context) error {
	year, err := intParam(ctx, "year")
	if err != nil {
		return err
	}
	info, err := api.svc.Year(year)
	if err != nil {
		return errors.Wrap(err, "getting BS year")
	}
	return ctx.JSON(http.StatusOK, info)
}

func (api *calendarApi) month(ctx echo.Context) error {
	year, err := intParam(ctx, "year")
	if err != nil {
		return err
	}
	month, err := intParam(ctx, "month")
	if err != nil {
		return err
	}
	info, err := api.svc.Month(year, month)
	if err != nil {
		return errors.Wrap(err, "getting BS month")
	}
	return ctx.JSON(http.StatusOK, info)
}

func (api *calendarApi) toGregorian(ctx echo.Context) error {
	var data calendar.BSDateInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BSDateInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ad, err := api.svc.ToGregorian(data.Year, data.Month, data.Day)
	if err != nil {
		return errors.Wrap(err, "converting to gregorian")
	}
	d, err := api.svc.NewDate(data.Year, data.Month, data.Day)
	if err != nil {
		return errors.Wrap(err, "converting to gregorian")
	}
	resp, err := api.conversion(ctx, d, ad)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *calendarApi) toBS(ctx echo.Context) error {
	var data calendar.GregorianInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GregorianInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ad := data.Time()
	d, err := api.svc.ToBS(ad)
	if err != nil {
		return errors.Wrap(err, "converting to BS")
	}
	resp, err := api.conversion(ctx, d, ad)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *calendarApi) format(ctx echo.Context) error {
	var query calendar.FormatQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to FormatQuery")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}
	f, err := api.formatter(ctx, query.Locale)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"formatted": f.FormatString(query.Date, query.Options())})
}

func (api *calendarApi) relative(ctx echo.Context) error {
	var query calendar.RelativeQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to RelativeQuery")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}
	f, err := api.formatter(ctx, query.Locale)
	if err != nil {
		return err
	}

	now := nowFunc()
	if query.Now != "" {
		now, _ = calendar.ParseDay(query.Now) // checked by Validate
	}
	return ctx.JSON(http.StatusOK, echo.Map{"relative": f.RelativeTimeString(query.Date, now)})
}

func (api *calendarApi) numerals(ctx echo.Context) error {
	var query calendar.NumeralsQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to NumeralsQuery")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}
	f, err := api.formatter(ctx, query.Locale)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"value": f.LocalizeDigits(query.Value)})
}
