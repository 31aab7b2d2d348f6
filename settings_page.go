package titlefill

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/eringen/titlefill/views"
)

// settingsPath is the admin menu entry of the filler under general settings.
func (a *App) settingsPath() string {
	return "/admin/options-general/" + a.Plugin.OptionKey + "/"
}

func (a *App) handleSettingsPage(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.Plugin.OptionsInit(c.Request().Context(), a.Settings)
	return Render(c, a.Views.Settings(a.settingsPage(c)))
}

func (a *App) settingsPage(c echo.Context) views.SettingsPage {
	key := a.Plugin.OptionKey
	opts := a.Plugin.Snapshot().Editable()
	t := a.i18n
	return views.SettingsPage{
		Lang:      t.Lang(),
		Heading:   t.T(msgOptionsHeading),
		Action:    "/admin/options/",
		OptionKey: key,
		CSRFToken: CsrfToken(c),

		Updated:        c.QueryParam("settings-updated") == "true",
		UpdatedMessage: t.T(msgSettingsSaved),

		TitleFormatLabel: t.T(msgCustomTitleFormat),
		TitleFormatName:  FieldName(key, fieldTitleFormat),
		TitleFormatValue: opts.TitleFormat,
		CodesIntro:       t.T(msgCodesIntro),
		Codes: []views.Code{
			{Token: "%d", Label: t.T(msgCodeDate)},
			{Token: "%f", Label: t.T(msgCodeFormat)},
			{Token: "%n", Label: t.T(msgCodeID)},
			{Token: "%c", Label: t.T(msgCodeCategory)},
		},
		TagsLabel: t.T(msgTagsAllowed),
		Tags:      TitleTags,

		NotEmptyName:    FieldName(key, fieldNotEmptyTitles),
		NotEmptyChecked: opts.NotEmptyTitles,
		NotEmptyLabel:   t.T(msgNotEmptyTitles),

		SubmitLabel: t.T(msgSaveChanges),
	}
}

// handleOptionsSave is the generic options endpoint: option_page names a
// registered setting whose validator runs before the value is stored.
func (a *App) handleOptionsSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	form, err := c.FormParams()
	if err != nil {
		return err
	}
	key := form.Get("option_page")
	if !a.Settings.Registered(key) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown option page")
	}

	ctx := c.Request().Context()
	if _, err := a.Settings.Save(ctx, key, RawInputFromForm(form, key)); err != nil {
		if errors.Is(err, ErrUnknownSetting) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown option page")
		}
		// Readers keep getting the previous or default options.
		optionSavesTotal.WithLabelValues("error").Inc()
		a.logger.Warn("save options", "key", key, "error", err)
		return c.Redirect(http.StatusSeeOther, a.settingsPath())
	}
	optionSavesTotal.WithLabelValues("ok").Inc()

	q := url.Values{}
	q.Set("settings-updated", "true")
	return c.Redirect(http.StatusSeeOther, a.settingsPath()+"?"+q.Encode())
}
