package notice

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func strPtr(s string) *string { return &s }

const expectedAcmeBody = " \r\n" +
	"        <html>\r\n" +
	"        <body>\r\n" +
	"        <tr>\r\n" +
	"                <td> <span><br/>Уведомляем вас, что срок согласования контрагента подходит к концу:</span> </td>\r\n" +
	"            </tr>\r\n" +
	"         <tr>\r\n" +
	"                <td> <span><br/>Наименование контрагента: Acme</span> </td>\r\n" +
	"            </tr>\r\n" +
	"        <tr>\r\n" +
	"                <td> <span><br/>ИНН: не указан</span> </td>\r\n" +
	"            </tr>\r\n" +
	"        <tr>\r\n" +
	"                <td> <span><br/>КПП: KPP1</span> </td>\r\n" +
	"            </tr>\r\n" +
	"        <tr>\r\n" +
	"                <td> <span><br/>Срок согласования: 05.03.2025</span> </td>\r\n" +
	"            </tr>\r\n" +
	"        </body>\r\n" +
	"        </html>\r\n" +
	"        "

func TestBodyIsByteExact(t *testing.T) {
	r := NewRenderer(language.Russian)
	validity := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	body, err := r.Body(Params{Partner: "Acme", INN: nil, KPP: strPtr("KPP1"), Validity: validity})
	require.NoError(t, err)
	assert.Equal(t, expectedAcmeBody, body)
	assert.Contains(t, body, "ИНН: не указан</span>")
	assert.Contains(t, body, "КПП: KPP1</span>")
	assert.Contains(t, body, "Срок согласования: "+validity.Format(DateLayout)+"</span>")
}

func TestBodyFallbacks(t *testing.T) {
	validity := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing identifiers use the fallback", func(t *testing.T) {
		body, err := NewRenderer(language.Russian).Body(Params{Partner: "Acme", Validity: validity})
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(body, "не указан"))
		assert.Contains(t, body, "01.12.2025")
	})

	t.Run("empty identifiers render as stored", func(t *testing.T) {
		body, err := NewRenderer(language.Russian).Body(Params{Partner: "Acme", INN: strPtr(""), KPP: strPtr("  "), Validity: validity})
		require.NoError(t, err)
		assert.NotContains(t, body, "не указан")
		assert.Contains(t, body, "ИНН: </span>")
		assert.Contains(t, body, "КПП:   </span>")
	})

	t.Run("english fallback", func(t *testing.T) {
		r := NewRenderer(language.English)
		body, err := r.Body(Params{Partner: "Acme", Validity: validity})
		require.NoError(t, err)
		assert.Contains(t, body, "ИНН: not specified</span>")
		assert.Equal(t, "Partner approval period ending Acme", r.Subject("Acme"))
	})

	t.Run("regional russian tag resolves to russian", func(t *testing.T) {
		r := NewRenderer(language.MustParse("ru-RU"))
		assert.Equal(t, "не указан", r.NotSpecified())
	})
}

func TestBodyBoundaryChecks(t *testing.T) {
	r := NewRenderer(language.Russian)
	validity := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("markup is escaped", func(t *testing.T) {
		body, err := r.Body(Params{Partner: `<b>"Рога & копыта"</b>`, Validity: validity})
		require.NoError(t, err)
		assert.Contains(t, body, "&lt;b&gt;&#34;Рога &amp; копыта&#34;&lt;/b&gt;")
	})

	t.Run("empty partner is rejected", func(t *testing.T) {
		_, err := r.Body(Params{Partner: " ", Validity: validity})
		assert.ErrorIs(t, err, ErrInvalidParams)
	})

	t.Run("missing validity is rejected", func(t *testing.T) {
		_, err := r.Body(Params{Partner: "Acme"})
		assert.ErrorIs(t, err, ErrInvalidParams)
	})

	t.Run("control characters are rejected", func(t *testing.T) {
		_, err := r.Body(Params{Partner: "Acme\x00", Validity: validity})
		assert.ErrorIs(t, err, ErrInvalidParams)
		_, err = r.Body(Params{Partner: "Acme", KPP: strPtr("12\n3"), Validity: validity})
		assert.ErrorIs(t, err, ErrInvalidParams)
	})
}

func TestSubject(t *testing.T) {
	r := NewRenderer(language.Russian)
	assert.Equal(t, "Окончание срока согласования контрагента Acme", r.Subject("Acme"))
}

func TestDedupeKey(t *testing.T) {
	c := Candidate{Validity: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), DaysLeft: 30}
	assert.True(t, strings.HasSuffix(c.DedupeKey(), ":2025-03-05:30"))
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2025, 1, 4, 23, 30, 0, 0, time.FixedZone("MSK", 3*3600))
	validity := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 60, daysBetween(today, validity))
}
