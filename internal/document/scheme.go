package document

import "github.com/google/uuid"

// Card types that carry docflow extensions.
var (
	VacationRequestTypeID = uuid.MustParse("e3b1c7a0-4f2d-4d6a-9c8b-1a2f3e4d5c01")
	ArchiveRequestTypeID  = uuid.MustParse("e3b1c7a0-4f2d-4d6a-9c8b-1a2f3e4d5c02")
	PartnerRequestTypeID  = uuid.MustParse("e3b1c7a0-4f2d-4d6a-9c8b-1a2f3e4d5c03")
)

// Section and field names of the workflow cards handled by docflow.
const (
	SectionCommonInfo = "DocumentCommonInfo"
	FieldAuthorID     = "AuthorID"
	FieldCreationDate = "CreationDate"
	FieldStateName    = "StateName"

	SectionRequests       = "PnrRequests"
	FieldVacationCategory = "VacationCategoryID"
	FieldFirstDate        = "FirstDate"
	FieldConnectRoaming   = "ConnectRoaming"
	FieldCountry          = "Country"
	FieldComment          = "Comment"

	SectionArchiveRequest = "PnrArchiveAHOGetRequest"
	FieldStorageID        = "StorageID"
	FieldDepartmentID     = "DepartmentID"
	FieldDepartmentName   = "DepartmentName"
	FieldDepartmentIdx    = "DepartmentIdx"
)

// WorkflowSchema declares every section docflow reads or writes.
var WorkflowSchema = NewSchema(
	SectionDef{
		Name: SectionCommonInfo,
		Fields: []FieldDef{
			{Name: FieldAuthorID, Kind: KindUUID},
			{Name: FieldCreationDate, Kind: KindDate},
			{Name: FieldStateName, Kind: KindString},
		},
	},
	SectionDef{
		Name: SectionRequests,
		Fields: []FieldDef{
			{Name: FieldVacationCategory, Kind: KindUUID},
			{Name: FieldFirstDate, Kind: KindDate},
			{Name: FieldConnectRoaming, Kind: KindBool},
			{Name: FieldCountry, Kind: KindString},
			{Name: FieldComment, Kind: KindString},
		},
	},
	SectionDef{
		Name: SectionArchiveRequest,
		Fields: []FieldDef{
			{Name: FieldStorageID, Kind: KindUUID},
			{Name: FieldDepartmentID, Kind: KindUUID},
			{Name: FieldDepartmentName, Kind: KindString},
			{Name: FieldDepartmentIdx, Kind: KindString},
		},
	},
)
