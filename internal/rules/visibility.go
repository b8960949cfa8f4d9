package rules

import "github.com/google/uuid"

// Controls whose visibility depends on the archive storage type.
const (
	ControlBox     = "Box"
	ControlBarcode = "Barcode"
)

// Visibility lists which storage-dependent controls are shown.
type Visibility struct {
	Box     bool
	Barcode bool
}

// Controls returns the visibility flag per control name.
func (v Visibility) Controls() map[string]bool {
	return map[string]bool{
		ControlBox:     v.Box,
		ControlBarcode: v.Barcode,
	}
}

// DeriveStorageVisibility maps a storage type to control visibility.
// A nil storage type hides every dependent control.
func DeriveStorageVisibility(storageType *uuid.UUID) Visibility {
	if storageType == nil {
		return Visibility{}
	}
	return Visibility{
		Box:     *storageType == StorageTypeCOID,
		Barcode: *storageType == StorageTypeDelisID,
	}
}
