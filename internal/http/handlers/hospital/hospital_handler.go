package hospital

import (
	"net/http"

	apphospital "wastetrack/internal/app/hospital"
	apppickup "wastetrack/internal/app/pickup"
	"wastetrack/internal/http/responses"
	"wastetrack/internal/http/session"
	"wastetrack/internal/logging"
)

type Handler struct {
	hospitals    apphospital.Service
	pickups      apppickup.Service
	secureCookie bool
	logger       logging.Logger
}

func NewHandler(hospitals apphospital.Service, pickups apppickup.Service, secureCookie bool, logger logging.Logger) *Handler {
	return &Handler{
		hospitals:    hospitals,
		pickups:      pickups,
		secureCookie: secureCookie,
		logger:       logger.With("component", "hospital_http_handler"),
	}
}

type loginRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success  bool                    `json:"success"`
	Hospital *apphospital.AccountDto `json:"hospital"`
}

type hospitalRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type dashboardResponse struct {
	Success  bool                              `json:"success"`
	Hospital hospitalRef                       `json:"hospital"`
	Stats    *apppickup.HospitalStats          `json:"stats"`
	Pickups  []apppickup.HospitalDashboardItem `json:"pickups"`
}

type successMessage struct {
	Success bool `json:"success"`
}

// Login POST /api/hospital/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if !responses.BindAndValidate(w, r, &input, "กรุณากรอกรหัสและรหัสผ่าน") {
		return
	}

	account, err := h.hospitals.Login(r.Context(), input.Code, input.Password)
	if err != nil {
		h.logger.Error("hospital login failed", "code", input.Code, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในระบบ")
		return
	}

	session.Issue(w, session.HospitalCookie, account.ID, h.secureCookie)
	responses.WriteJSON(w, http.StatusOK, loginResponse{Success: true, Hospital: account})
}

// Logout POST /api/hospital/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, session.HospitalCookie, h.secureCookie)
	responses.WriteJSON(w, http.StatusOK, successMessage{Success: true})
}

// Dashboard GET /api/hospital/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	hospital := session.HospitalFrom(r.Context())

	stats, pickups, err := h.pickups.HospitalDashboard(r.Context(), hospital.ID)
	if err != nil {
		h.logger.Error("hospital dashboard failed", "hospitalId", hospital.ID, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในระบบ")
		return
	}

	responses.WriteJSON(w, http.StatusOK, dashboardResponse{
		Success:  true,
		Hospital: hospitalRef{Name: hospital.Name, Code: hospital.Code},
		Stats:    stats,
		Pickups:  pickups,
	})
}

// ListPickups GET /api/pickup
func (h *Handler) ListPickups(w http.ResponseWriter, r *http.Request) {
	hospital := session.HospitalFrom(r.Context())

	pickups, err := h.pickups.HospitalFeed(r.Context(), hospital.ID)
	if err != nil {
		h.logger.Error("list hospital pickups failed", "hospitalId", hospital.ID, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในการดึงข้อมูล")
		return
	}
	responses.WriteJSON(w, http.StatusOK, pickups)
}
