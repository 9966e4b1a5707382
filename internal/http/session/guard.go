package session

import (
	"context"
	"net/http"

	"wastetrack/internal/http/responses"
	"wastetrack/internal/models"
)

type AdminStore interface {
	GetByID(ctx context.Context, id string) (*models.Admin, error)
}

type HospitalStore interface {
	GetByID(ctx context.Context, id string) (*models.Hospital, error)
}

type DriverStore interface {
	GetByID(ctx context.Context, id string) (*models.Driver, error)
}

type ctxKey int

const (
	adminKey ctxKey = iota
	hospitalKey
	driverKey
)

// Guard resolves session cookies to active actors. Each Require* middleware
// rejects before the handler runs, so handlers can assume a valid principal.
type Guard struct {
	admins    AdminStore
	hospitals HospitalStore
	drivers   DriverStore
}

func NewGuard(admins AdminStore, hospitals HospitalStore, drivers DriverStore) *Guard {
	return &Guard{admins: admins, hospitals: hospitals, drivers: drivers}
}

func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(AdminCookie)
		if err != nil || c.Value == "" {
			responses.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		admin, err := g.admins.GetByID(r.Context(), c.Value)
		if err != nil || !admin.IsActive {
			responses.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey, admin)))
	})
}

func (g *Guard) RequireHospital(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(HospitalCookie)
		if err != nil || c.Value == "" {
			responses.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		hospital, err := g.hospitals.GetByID(r.Context(), c.Value)
		if err != nil || !hospital.IsActive {
			responses.WriteError(w, http.StatusUnauthorized, "Hospital not found or inactive")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), hospitalKey, hospital)))
	})
}

func (g *Guard) RequireDriver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(DriverCookie)
		if err != nil || c.Value == "" {
			responses.WriteError(w, http.StatusUnauthorized, "กรุณาเข้าสู่ระบบ")
			return
		}
		driver, err := g.drivers.GetByID(r.Context(), c.Value)
		if err != nil || !driver.IsActive {
			responses.WriteError(w, http.StatusUnauthorized, "ไม่พบพนักงาน")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), driverKey, driver)))
	})
}

// AdminFrom returns the admin placed in the context by RequireAdmin.
func AdminFrom(ctx context.Context) *models.Admin {
	a, _ := ctx.Value(adminKey).(*models.Admin)
	return a
}

func HospitalFrom(ctx context.Context) *models.Hospital {
	h, _ := ctx.Value(hospitalKey).(*models.Hospital)
	return h
}

func DriverFrom(ctx context.Context) *models.Driver {
	d, _ := ctx.Value(driverKey).(*models.Driver)
	return d
}
