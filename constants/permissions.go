package constants

// Organization permissions
const (
	// Admin permissions
	PermSuperAdminFull = "patient-followup.super-admin.full-permit"
	PermCareTeamFull   = "patient-followup.care-team.full-permit"
	PermClinicianFull  = "patient-followup.clinician.full-permit"
	PermServiceFull    = "patient-followup.service.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	ProtocolAdminPermissions = []string{
		PermSuperAdminFull,
		PermClinicianFull,
	}
)
