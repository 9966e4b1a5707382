package driver

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appdriver "wastetrack/internal/app/driver"
	apphospital "wastetrack/internal/app/hospital"
	apppickup "wastetrack/internal/app/pickup"
	"wastetrack/internal/http/responses"
	"wastetrack/internal/http/session"
	"wastetrack/internal/logging"
)

const maxUploadMemory = 32 << 20

type Handler struct {
	drivers      appdriver.Service
	hospitals    apphospital.Service
	pickups      apppickup.Service
	secureCookie bool
	logger       logging.Logger
}

func NewHandler(drivers appdriver.Service, hospitals apphospital.Service, pickups apppickup.Service, secureCookie bool, logger logging.Logger) *Handler {
	return &Handler{
		drivers:      drivers,
		hospitals:    hospitals,
		pickups:      pickups,
		secureCookie: secureCookie,
		logger:       logger.With("component", "driver_http_handler"),
	}
}

// Login POST /api/driver/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if !responses.BindAndValidate(w, r, &input, "กรุณากรอกรหัสพนักงานและรหัสผ่าน") {
		return
	}

	account, err := h.drivers.Login(r.Context(), input.DriverCode, input.Password)
	if err != nil {
		h.logger.Error("driver login failed", "code", input.DriverCode, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในการเข้าสู่ระบบ")
		return
	}

	session.Issue(w, session.DriverCookie, account.ID, h.secureCookie)
	responses.WriteJSON(w, http.StatusOK, loginResponse{Success: true, Driver: account})
}

// Logout POST /api/driver/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, session.DriverCookie, h.secureCookie)
	responses.WriteJSON(w, http.StatusOK, successMessage{Success: true})
}

// ListHospitals GET /api/driver/hospitals
func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitals.ListActive(r.Context())
	if err != nil {
		h.logger.Error("list active hospitals failed", "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในระบบ")
		return
	}
	responses.WriteJSON(w, http.StatusOK, hospitals)
}

// ListPickups GET /api/driver
func (h *Handler) ListPickups(w http.ResponseWriter, r *http.Request) {
	driver := session.DriverFrom(r.Context())

	pickups, err := h.pickups.ListByDriver(r.Context(), driver.ID)
	if err != nil {
		h.logger.Error("list driver pickups failed", "driverId", driver.ID, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในการดึงข้อมูล")
		return
	}
	responses.WriteJSON(w, http.StatusOK, pickups)
}

// CreatePickup POST /api/driver
func (h *Handler) CreatePickup(w http.ResponseWriter, r *http.Request) {
	driver := session.DriverFrom(r.Context())

	form, ok := h.parsePickupForm(w, r)
	if !ok {
		return
	}

	dto, err := h.pickups.Create(r.Context(), apppickup.CreatePickupInput{
		DriverID:     driver.ID,
		HospitalCode: form.hospitalCode,
		WeightKg:     form.weight,
		CollectedAt:  form.collectedAt,
		Status:       form.status,
		Note:         form.note,
		Photos:       form.photos,
	})
	if err != nil {
		h.logger.Error("create pickup failed", "driverId", driver.ID, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในการบันทึก: "+err.Error())
		return
	}
	responses.WriteJSON(w, http.StatusOK, pickupResponse{Success: true, Pickup: dto})
}

// UpdatePickup PUT /api/driver/{id}
func (h *Handler) UpdatePickup(w http.ResponseWriter, r *http.Request) {
	driver := session.DriverFrom(r.Context())
	id := chi.URLParam(r, "id")

	form, ok := h.parsePickupForm(w, r)
	if !ok {
		return
	}

	dto, err := h.pickups.Update(r.Context(), apppickup.UpdatePickupInput{
		ID:           id,
		DriverID:     driver.ID,
		HospitalCode: form.hospitalCode,
		WeightKg:     form.weight,
		CollectedAt:  form.collectedAt,
		Status:       form.status,
		Note:         form.note,
		Photos:       form.photos,
	})
	if err != nil {
		h.logger.Error("update pickup failed", "pickupId", id, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในการแก้ไข: "+err.Error())
		return
	}
	responses.WriteJSON(w, http.StatusOK, pickupResponse{Success: true, Pickup: dto})
}

// DeletePickup DELETE /api/driver/{id}
func (h *Handler) DeletePickup(w http.ResponseWriter, r *http.Request) {
	driver := session.DriverFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.pickups.Delete(r.Context(), driver.ID, id); err != nil {
		h.logger.Error("delete pickup failed", "pickupId", id, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในการลบ: "+err.Error())
		return
	}
	responses.WriteJSON(w, http.StatusOK, successMessage{Success: true, Message: "ลบรายการสำเร็จ"})
}

// GetPickup GET /api/driver/pickups/{id}
func (h *Handler) GetPickup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	dto, err := h.pickups.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get pickup failed", "pickupId", id, "error", err)
		responses.WriteAppError(w, err, "Internal server error")
		return
	}
	responses.WriteJSON(w, http.StatusOK, dto)
}

// PatchPickup PATCH /api/driver/pickups/{id}
func (h *Handler) PatchPickup(w http.ResponseWriter, r *http.Request) {
	driver := session.DriverFrom(r.Context())
	id := chi.URLParam(r, "id")

	var input patchRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		responses.WriteBadRequest(w, "Missing required fields")
		return
	}
	if input.WeightKg == "" || input.Status == "" || input.CollectedAt == "" {
		responses.WriteBadRequest(w, "Missing required fields")
		return
	}
	weight, err := input.WeightKg.Float64()
	if err != nil {
		responses.WriteBadRequest(w, "Missing required fields")
		return
	}
	collectedAt, err := parseCollectedAt(input.CollectedAt)
	if err != nil {
		responses.WriteBadRequest(w, "Missing required fields")
		return
	}

	dto, err := h.pickups.Patch(r.Context(), apppickup.PatchPickupInput{
		ID:          id,
		DriverID:    driver.ID,
		WeightKg:    weight,
		CollectedAt: collectedAt,
		Status:      input.Status,
		Note:        input.Note,
	})
	if err != nil {
		h.logger.Error("patch pickup failed", "pickupId", id, "error", err)
		responses.WriteAppError(w, err, "Internal server error")
		return
	}
	responses.WriteJSON(w, http.StatusOK, dto)
}

// DeletePhoto DELETE /api/driver/photo/{id}
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	driver := session.DriverFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.pickups.DeletePhoto(r.Context(), driver.ID, id); err != nil {
		h.logger.Error("delete photo failed", "photoId", id, "error", err)
		responses.WriteAppError(w, err, "เกิดข้อผิดพลาดในการลบรูปภาพ: "+err.Error())
		return
	}
	responses.WriteJSON(w, http.StatusOK, successMessage{Success: true, Message: "ลบรูปภาพสำเร็จ"})
}

type pickupForm struct {
	hospitalCode string
	weight       float64
	collectedAt  time.Time
	status       string
	note         string
	photos       []*multipart.FileHeader
}

// parsePickupForm reads the multipart pickup submission. It writes the error
// response itself and reports false when the form is unusable.
func (h *Handler) parsePickupForm(w http.ResponseWriter, r *http.Request) (*pickupForm, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		responses.WriteBadRequest(w, "กรุณากรอกข้อมูลให้ครบถ้วน")
		return nil, false
	}

	form := &pickupForm{
		hospitalCode: r.FormValue("hospital_id"),
		status:       r.FormValue("status"),
		note:         r.FormValue("note"),
	}
	weightStr := r.FormValue("weight")
	collectedStr := r.FormValue("collected_at")

	if form.hospitalCode == "" || weightStr == "" || collectedStr == "" || form.status == "" {
		responses.WriteBadRequest(w, "กรุณากรอกข้อมูลให้ครบถ้วน")
		return nil, false
	}

	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		responses.WriteBadRequest(w, "กรุณากรอกข้อมูลให้ครบถ้วน")
		return nil, false
	}
	form.weight = weight

	collectedAt, err := parseCollectedAt(collectedStr)
	if err != nil {
		responses.WriteBadRequest(w, "กรุณากรอกข้อมูลให้ครบถ้วน")
		return nil, false
	}
	form.collectedAt = collectedAt

	if r.MultipartForm != nil {
		form.photos = r.MultipartForm.File["photos"]
	}
	return form, true
}

// parseCollectedAt accepts RFC 3339 as well as the zone-less local form the
// pickup form submits.
func parseCollectedAt(s string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
