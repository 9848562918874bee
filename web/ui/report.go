package ui

import (
	"errors"
	"net/http"
	"strings"

	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/services"

	"go.uber.org/zap"
)

const reportSuccessMessage = "Sighting reported. Thank you!"

func formFromRequest(r *http.Request) services.ReportForm {
	status := constants.StatusNormal
	if r.PostFormValue("urgent") != "" {
		status = constants.StatusUrgent
	}
	return services.ReportForm{
		Species:           r.PostFormValue("species"),
		ReporterFirstName: r.PostFormValue("reporter_first_name"),
		ReporterLastName:  r.PostFormValue("reporter_last_name"),
		Notes:             r.PostFormValue("notes"),
		Status:            status,
	}
}

func (h *UIHandler) reportData(r *http.Request, flow *services.ReportFlow) map[string]interface{} {
	data := pageData(r, "Report Sighting", "report")
	data["Form"] = flow.Form()
	data["CanSubmit"] = flow.CanSubmit()
	data["PopularSpecies"] = constants.PopularSpecies
	data["Location"] = constants.ReserveName
	return data
}

// ReportFormHandler renders an empty report form
func (h *UIHandler) ReportFormHandler(w http.ResponseWriter, r *http.Request) {
	flow := h.reports.NewFlow(services.ReportForm{})
	h.views.RenderTemplate(w, "report.html", h.reportData(r, flow))
}

// ReportCheckHandler re-renders the submit button as the form changes
func (h *UIHandler) ReportCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	flow := h.reports.NewFlow(formFromRequest(r))
	h.views.RenderPartial(w, "submit_button", map[string]interface{}{
		"CanSubmit": flow.CanSubmit(),
	})
}

// ReportSubmitHandler submits the form. Success redirects home with a
// flash message; failure re-renders the form with its values kept.
func (h *UIHandler) ReportSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	flow := h.reports.NewFlow(formFromRequest(r))
	_, err := flow.Submit(r.Context())
	if err == nil {
		setFlash(w, reportSuccessMessage)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := h.reportData(r, flow)
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		data["Missing"] = vErr.MissingFields
		data["Error"] = "Please fill in: " + strings.ReplaceAll(strings.Join(vErr.MissingFields, ", "), "_", " ")
		h.views.RenderTemplate(w, "report.html", data, http.StatusUnprocessableEntity)
	default:
		h.logger.Warn("Report screen submission failed", zap.Error(err))
		data["Error"] = constants.GetErrorMessage(constants.ErrCodeSubmitFailed)
		h.views.RenderTemplate(w, "report.html", data, http.StatusBadGateway)
	}
}
