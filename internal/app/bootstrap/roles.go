// internal/app/bootstrap/roles.go
package bootstrap

import "github.com/dalemusser/mediateam/internal/domain/models"

// defaultRoles are created on startup when seed_default_roles is on.
// Roles that already exist (by slug) are not modified.
var defaultRoles = []models.Role{
	{
		Name:        "Team Leader",
		Description: "Leads the media team and coordinates schedules.",
		Responsibilities: []string{
			"Plan the service rota",
			"Coordinate with ministry leaders",
			"Onboard new members",
		},
		Permissions: []models.Permission{
			models.PermViewCalendar, models.PermCreateEvents, models.PermEditEvents, models.PermDeleteEvents,
			models.PermViewMinutes, models.PermUploadMinutes, models.PermEditMinutes, models.PermDeleteMinutes,
			models.PermAssignRoles, models.PermCreateContent,
		},
	},
	{
		Name:        "Secretary",
		Description: "Keeps meeting records for the team.",
		Responsibilities: []string{
			"Take minutes at team meetings",
			"Track action items",
		},
		Permissions: []models.Permission{
			models.PermViewCalendar, models.PermViewMinutes, models.PermUploadMinutes, models.PermEditMinutes,
		},
	},
	{
		Name:             "Photographer",
		Description:      "Covers services and events with still photography.",
		Responsibilities: []string{"Photograph services and events", "Deliver edited photos"},
		Permissions:      []models.Permission{models.PermViewCalendar, models.PermViewMinutes, models.PermCreateContent},
	},
	{
		Name:             "Videographer",
		Description:      "Records and edits video.",
		Responsibilities: []string{"Operate cameras during services", "Edit recap videos"},
		Permissions:      []models.Permission{models.PermViewCalendar, models.PermViewMinutes, models.PermCreateContent},
	},
	{
		Name:             "Sound Technician",
		Description:      "Runs the sound desk.",
		Responsibilities: []string{"Mix live sound", "Maintain audio equipment"},
		Permissions:      []models.Permission{models.PermViewCalendar, models.PermViewMinutes},
	},
	{
		Name:             "Member",
		Description:      "General media team member.",
		Responsibilities: []string{"Serve on the rota"},
		Permissions:      []models.Permission{models.PermViewCalendar},
	},
}
