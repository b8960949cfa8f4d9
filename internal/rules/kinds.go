package rules

import "github.com/google/uuid"

// Vacation categories (PnrVacationRequestTypes).
var (
	RegularLeaveID = uuid.MustParse("0d1e2f0a-6c4b-4a8e-9a51-2a6c1f0e7b01")
	StudyLeaveID   = uuid.MustParse("0d1e2f0a-6c4b-4a8e-9a51-2a6c1f0e7b02")
	OtherLeaveID   = uuid.MustParse("0d1e2f0a-6c4b-4a8e-9a51-2a6c1f0e7b03")
)

// Archive storage types (PnrStorageTypes).
var (
	StorageTypeCOID    = uuid.MustParse("5b7f3c2e-91d4-4f0a-8d6e-3c1a2b4d5e01")
	StorageTypeDelisID = uuid.MustParse("5b7f3c2e-91d4-4f0a-8d6e-3c1a2b4d5e02")
)

// HRRoleID exempts its members from deadline and attachment checks.
var HRRoleID = uuid.MustParse("9c2a4b6d-8e0f-4a1b-b3c5-d7e9f1a2b3c4")
