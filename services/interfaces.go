package services

import "oruma/models"

// ContactRepository defines the contact storage the import needs.
// Production uses database.ContactStore.
type ContactRepository interface {
	BatchSave(inputs []models.ContactInput) (int, error)
}
