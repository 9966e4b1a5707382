package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	appadmin "wastetrack/internal/app/admin"
	appdriver "wastetrack/internal/app/driver"
	apphospital "wastetrack/internal/app/hospital"
	"wastetrack/internal/http/responses"
	"wastetrack/internal/http/session"
	"wastetrack/internal/logging"
)

const internalErr = "เกิดข้อผิดพลาดในระบบ"

type Handler struct {
	admins       appadmin.Service
	hospitals    apphospital.Service
	drivers      appdriver.Service
	secureCookie bool
	logger       logging.Logger
}

func NewHandler(admins appadmin.Service, hospitals apphospital.Service, drivers appdriver.Service, secureCookie bool, logger logging.Logger) *Handler {
	return &Handler{
		admins:       admins,
		hospitals:    hospitals,
		drivers:      drivers,
		secureCookie: secureCookie,
		logger:       logger.With("component", "admin_http_handler"),
	}
}

// Login POST /api/admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if !responses.BindAndValidate(w, r, &input, "กรุณากรอกชื่อผู้ใช้และรหัสผ่าน") {
		return
	}

	account, err := h.admins.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		h.logger.Error("admin login failed", "username", input.Username, "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}

	session.Issue(w, session.AdminCookie, account.ID, h.secureCookie)
	responses.WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "เข้าสู่ระบบสำเร็จ",
		Admin:   account,
	})
}

// Logout POST /api/admin/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, session.AdminCookie, h.secureCookie)
	responses.WriteJSON(w, http.StatusOK, successMessage{Success: true})
}

// Dashboard GET /api/admin/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	admin := session.AdminFrom(r.Context())

	stats, err := h.admins.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("admin dashboard failed", "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}

	responses.WriteJSON(w, http.StatusOK, dashboardResponse{
		Success:   true,
		AdminName: admin.Name,
		Stats:     stats,
	})
}

// ListHospitals GET /api/admin/hospitals
func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitals.List(r.Context())
	if err != nil {
		h.logger.Error("list hospitals failed", "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, hospitalListResponse{Success: true, Hospitals: hospitals})
}

// CreateHospital POST /api/admin/hospitals
func (h *Handler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var input accountRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		responses.WriteBadRequest(w, "กรุณากรอกข้อมูลให้ครบถ้วน")
		return
	}

	account, err := h.hospitals.Create(r.Context(), apphospital.CreateHospitalInput{
		Code:     input.Code,
		Name:     input.Name,
		Password: input.Password,
		IsActive: input.IsActive,
	})
	if err != nil {
		h.logger.Error("create hospital failed", "code", input.Code, "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, hospitalMutationResponse{
		Success:  true,
		Message:  "เพิ่มโรงพยาบาลสำเร็จ",
		Hospital: account,
	})
}

// UpdateHospital PUT /api/admin/hospitals/{id}
func (h *Handler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input accountRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		responses.WriteBadRequest(w, "ไม่มีข้อมูลที่จะอัปเดต")
		return
	}

	account, err := h.hospitals.Update(r.Context(), id, apphospital.UpdateHospitalInput{
		Name:     input.Name,
		Password: input.Password,
		IsActive: input.IsActive,
	})
	if err != nil {
		h.logger.Error("update hospital failed", "hospitalId", id, "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, hospitalMutationResponse{
		Success:  true,
		Message:  "แก้ไขโรงพยาบาลสำเร็จ",
		Hospital: account,
	})
}

// DeleteHospital DELETE /api/admin/hospitals/{id}
func (h *Handler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.hospitals.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete hospital failed", "hospitalId", id, "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, successMessage{Success: true, Message: "ลบโรงพยาบาลสำเร็จ"})
}

// ListDrivers GET /api/admin/drivers
func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.drivers.List(r.Context())
	if err != nil {
		h.logger.Error("list drivers failed", "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, driverListResponse{Success: true, Drivers: drivers})
}

// CreateDriver POST /api/admin/drivers
func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var input accountRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		responses.WriteBadRequest(w, "กรุณากรอกข้อมูลให้ครบถ้วน")
		return
	}

	account, err := h.drivers.Create(r.Context(), appdriver.CreateDriverInput{
		Code:     input.Code,
		Name:     input.Name,
		Password: input.Password,
		IsActive: input.IsActive,
	})
	if err != nil {
		h.logger.Error("create driver failed", "code", input.Code, "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, driverMutationResponse{
		Success: true,
		Message: "เพิ่มพนักงานสำเร็จ",
		Driver:  account,
	})
}

// UpdateDriver PUT /api/admin/drivers/{id}
func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input accountRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		responses.WriteBadRequest(w, "กรุณากรอกชื่อพนักงาน")
		return
	}

	account, err := h.drivers.Update(r.Context(), id, appdriver.UpdateDriverInput{
		Name:     input.Name,
		Password: input.Password,
		IsActive: input.IsActive,
	})
	if err != nil {
		h.logger.Error("update driver failed", "driverId", id, "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, driverMutationResponse{
		Success: true,
		Message: "แก้ไขพนักงานสำเร็จ",
		Driver:  account,
	})
}

// DeleteDriver DELETE /api/admin/drivers/{id}
func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.drivers.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete driver failed", "driverId", id, "error", err)
		responses.WriteAppError(w, err, internalErr)
		return
	}
	responses.WriteJSON(w, http.StatusOK, successMessage{Success: true, Message: "ลบพนักงานสำเร็จ"})
}
