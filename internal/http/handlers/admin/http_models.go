package admin

import (
	appadmin "wastetrack/internal/app/admin"
	appdriver "wastetrack/internal/app/driver"
	apphospital "wastetrack/internal/app/hospital"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Admin   *appadmin.AccountDto `json:"admin"`
}

type dashboardResponse struct {
	Success   bool                     `json:"success"`
	AdminName string                   `json:"adminName"`
	Stats     *appadmin.DashboardStats `json:"stats"`
}

type hospitalListResponse struct {
	Success   bool                      `json:"success"`
	Hospitals []apphospital.HospitalDto `json:"hospitals"`
}

type hospitalMutationResponse struct {
	Success  bool                    `json:"success"`
	Message  string                  `json:"message"`
	Hospital *apphospital.AccountDto `json:"hospital"`
}

type driverListResponse struct {
	Success bool                  `json:"success"`
	Drivers []appdriver.DriverDto `json:"drivers"`
}

type driverMutationResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Driver  *appdriver.AccountDto `json:"driver"`
}

type successMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type accountRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Password string `json:"password"`
	IsActive *bool  `json:"isActive"`
}
