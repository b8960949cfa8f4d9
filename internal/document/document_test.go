package document

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"docflow/pkg/platform/sentinel"
)

type DocumentSuite struct {
	suite.Suite
	doc      *Document
	requests *Section
}

func TestDocumentSuite(t *testing.T) {
	suite.Run(t, new(DocumentSuite))
}

func (s *DocumentSuite) SetupTest() {
	s.doc = New(WorkflowSchema, uuid.New(), StoreModeInsert)
	var err error
	s.requests, err = s.doc.AddSection(SectionRequests)
	s.Require().NoError(err)
}

func (s *DocumentSuite) TestSectionLookup() {
	s.Run("undeclared section is a lookup failure", func() {
		_, err := s.doc.AddSection("Nope")
		s.True(errors.Is(err, sentinel.ErrUnknownField))
	})

	s.Run("declared but not loaded section is absent", func() {
		_, ok := s.doc.Section(SectionArchiveRequest)
		s.False(ok)
	})

	s.Run("adding twice returns the same section", func() {
		again, err := s.doc.AddSection(SectionRequests)
		s.NoError(err)
		s.Same(s.requests, again)
		s.Equal([]string{SectionRequests}, s.doc.SectionNames())
	})
}

func (s *DocumentSuite) TestFieldAccess() {
	s.Run("unknown field is an error, not a panic", func() {
		_, err := s.requests.Get("Missing")
		s.True(errors.Is(err, sentinel.ErrUnknownField))
		s.True(errors.Is(s.requests.Set("Missing", "x"), sentinel.ErrUnknownField))
	})

	s.Run("declared unset field reads as null", func() {
		v, err := s.requests.Get(FieldCountry)
		s.NoError(err)
		s.True(v.IsNull())
		s.False(s.requests.Has(FieldCountry))
	})

	s.Run("typed round trip", func() {
		category := uuid.New()
		first := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
		s.Require().NoError(s.requests.Set(FieldVacationCategory, category))
		s.Require().NoError(s.requests.Set(FieldFirstDate, &first))
		s.Require().NoError(s.requests.Set(FieldConnectRoaming, true))

		v, _ := s.requests.Get(FieldVacationCategory)
		got, ok := v.UUID()
		s.True(ok)
		s.Equal(category, got)

		v, _ = s.requests.Get(FieldFirstDate)
		s.Equal(&first, v.TimePtr())

		v, _ = s.requests.Get(FieldConnectRoaming)
		b, ok := v.Bool()
		s.True(ok)
		s.True(b)
	})

	s.Run("kind mismatch is rejected", func() {
		err := s.requests.Set(FieldConnectRoaming, "yes")
		s.True(errors.Is(err, sentinel.ErrKindMismatch))
	})

	s.Run("nil pointer stores null", func() {
		var p *time.Time
		s.Require().NoError(s.requests.Set(FieldFirstDate, p))
		v, _ := s.requests.Get(FieldFirstDate)
		s.True(v.IsNull())
		s.True(s.requests.Has(FieldFirstDate))
	})
}

func (s *DocumentSuite) TestSubscribe() {
	var calls []string
	reaction := func(name string, value any) {
		calls = append(calls, name)
	}

	s.requests.Subscribe("watch", reaction)
	s.requests.Subscribe("watch", reaction)
	s.Equal(1, s.requests.Subscribers())

	s.Require().NoError(s.requests.Set(FieldCountry, "FR"))
	s.Equal([]string{FieldCountry}, calls)

	unsubscribe := s.requests.Subscribe("other", reaction)
	unsubscribe()
	unsubscribe()
	s.Equal(1, s.requests.Subscribers())
}

func TestNewSchemaRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema(SectionDef{Name: "A"}, SectionDef{Name: "A"})
	})
	assert.Panics(t, func() {
		NewSchema(SectionDef{Name: "A", Fields: []FieldDef{{Name: "x"}, {Name: "x"}}})
	})
}

func TestSchemaField(t *testing.T) {
	f, err := WorkflowSchema.Field(SectionCommonInfo, FieldCreationDate)
	require.NoError(t, err)
	assert.Equal(t, KindDate, f.Kind)

	_, err = WorkflowSchema.Field(SectionCommonInfo, FieldCountry)
	assert.ErrorIs(t, err, sentinel.ErrUnknownField)

	_, err = WorkflowSchema.Field("Nope", FieldCountry)
	assert.ErrorIs(t, err, sentinel.ErrUnknownField)
}

func TestNewValue(t *testing.T) {
	id := uuid.New()
	v, err := NewValue(KindUUID, id.String())
	require.NoError(t, err)
	got, _ := v.UUID()
	assert.Equal(t, id, got)

	_, err = NewValue(KindUUID, "not-a-uuid")
	assert.Error(t, err)

	v, err = NewValue(KindInt, 7)
	require.NoError(t, err)
	i, ok := v.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	v, err = NewValue(KindUUID, uuid.NullUUID{})
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Nil(t, v.UUIDPtr())

	var vs Values
	assert.True(t, vs.Get("anything").IsNull())
}

// =============================================================================
// Wire decoding
// =============================================================================

func (s *DocumentSuite) TestFromWire() {
	var w Wire
	payload := `{
		"id": "6f1c2a52-1111-4f4a-9b1d-000000000001",
		"type_id": "e3b1c7a0-4f2d-4d6a-9c8b-1a2f3e4d5c01",
		"store_mode": "insert",
		"files": [{"id": "6f1c2a52-1111-4f4a-9b1d-0000000000f1", "name": "order.pdf"}],
		"sections": {
			"PnrRequests": {
				"VacationCategoryID": "0d1e2f0a-6c4b-4a8e-9a51-2a6c1f0e7b01",
				"FirstDate": "2025-03-12",
				"ConnectRoaming": true,
				"Country": null
			},
			"DocumentCommonInfo": {"CreationDate": "2025-02-01T09:30:00Z"}
		}
	}`
	s.Require().NoError(json.Unmarshal([]byte(payload), &w))

	doc, err := FromWire(WorkflowSchema, w)
	s.Require().NoError(err)
	s.Equal(StoreModeInsert, doc.StoreMode)
	s.Equal(VacationRequestTypeID, doc.TypeID)
	s.True(doc.FilesLoaded())
	s.Len(doc.Files, 1)

	req, ok := doc.Section(SectionRequests)
	s.Require().True(ok)
	first, _ := req.Get(FieldFirstDate)
	t, ok := first.Time()
	s.True(ok)
	s.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), t)
	roaming, _ := req.Get(FieldConnectRoaming)
	b, _ := roaming.Bool()
	s.True(b)
	country, _ := req.Get(FieldCountry)
	s.True(req.Has(FieldCountry))
	s.True(country.IsNull())

	common, _ := doc.Section(SectionCommonInfo)
	created, _ := common.Get(FieldCreationDate)
	s.False(created.IsNull())
}

func (s *DocumentSuite) TestFromWireRejects() {
	tests := []struct {
		name string
		wire Wire
	}{
		{name: "unknown mode", wire: Wire{StoreMode: "upsert"}},
		{name: "unknown section", wire: Wire{Sections: map[string]map[string]any{"Nope": {}}}},
		{name: "unknown field", wire: Wire{Sections: map[string]map[string]any{SectionRequests: {"Nope": 1}}}},
		{name: "bad date", wire: Wire{Sections: map[string]map[string]any{SectionRequests: {FieldFirstDate: "12.03.2025"}}}},
		{name: "bad uuid", wire: Wire{Sections: map[string]map[string]any{SectionRequests: {FieldVacationCategory: "x"}}}},
		{name: "kind mismatch", wire: Wire{Sections: map[string]map[string]any{SectionRequests: {FieldConnectRoaming: "yes"}}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := FromWire(WorkflowSchema, tt.wire)
			s.Error(err)
		})
	}
}
