package database

import (
	"bugbounty-tracker/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedCategory struct {
	Name        string
	Description string
	Items       []string
}

// Default checklist catalog, seeded once when the categories table is empty.
// Targets created afterwards clone these items into their own checklist.
var defaultCatalog = []seedCategory{
	{
		Name:        "Reconnaissance",
		Description: "Passive and active information gathering",
		Items: []string{
			"Enumerate subdomains",
			"Identify technology stack",
			"Review exposed source repositories",
			"Collect endpoints from JS files",
		},
	},
	{
		Name:        "Configuration",
		Description: "Server and platform configuration review",
		Items: []string{
			"Check security headers",
			"Test TLS configuration",
			"Look for exposed admin panels",
			"Check for directory listing",
		},
	},
	{
		Name:        "Authentication",
		Description: "Login, session and credential handling",
		Items: []string{
			"Test password reset flow",
			"Check session fixation",
			"Test rate limiting on login",
			"Review JWT handling",
		},
	},
	{
		Name:        "Authorization",
		Description: "Access control between users and roles",
		Items: []string{
			"Test IDOR on object references",
			"Check privilege escalation paths",
			"Verify function-level access control",
		},
	},
	{
		Name:        "Input Validation",
		Description: "Injection and input handling flaws",
		Items: []string{
			"Test for SQL injection",
			"Test for XSS (reflected and stored)",
			"Test file upload restrictions",
			"Check for SSRF in URL parameters",
		},
	},
}

func seedChecklistCatalog(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		// catalog already present
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for ci, sc := range defaultCatalog {
			category := models.Category{
				Name:        sc.Name,
				Description: sc.Description,
				OrderNum:    ci + 1,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}

			for ii, title := range sc.Items {
				item := models.ChecklistItem{
					CategoryID: category.ID,
					Title:      title,
					OrderNum:   ii + 1,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}

			logger.Info("seeded category",
				zap.String("name", sc.Name),
				zap.Int("items", len(sc.Items)))
		}
		return nil
	})
}
