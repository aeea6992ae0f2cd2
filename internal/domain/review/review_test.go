package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

func TestSubmissionValidate(t *testing.T) {
	valid := func() Submission {
		return Submission{BarberID: "b1", Rating: 5, Comment: " great fade ", ClientName: " Omar "}
	}

	s := valid()
	require.NoError(t, s.Validate())
	assert.Equal(t, "great fade", s.Comment)
	assert.Equal(t, "Omar", s.ClientName)

	cases := map[string]func(*Submission){
		"barber_required":      func(s *Submission) { s.BarberID = "" },
		"invalid_rating":       func(s *Submission) { s.Rating = 0 },
		"comment_required":     func(s *Submission) { s.Comment = "   " },
		"comment_too_long":     func(s *Submission) { s.Comment = strings.Repeat("x", 1001) },
		"client_name_required": func(s *Submission) { s.ClientName = "" },
	}
	for code, mutate := range cases {
		s := valid()
		mutate(&s)
		err := s.Validate()
		assert.True(t, httperr.IsBusiness(err, code), code)
	}

	high := valid()
	high.Rating = 6
	assert.True(t, httperr.IsBusiness(high.Validate(), "invalid_rating"))
}

func TestSummarize(t *testing.T) {
	t.Run("no approved reviews", func(t *testing.T) {
		s := Summarize([]models.Review{{Rating: 5, Approved: false}})
		assert.Nil(t, s.AverageRating)
		assert.Equal(t, 0, s.TotalReviews)
	})

	t.Run("only approved count", func(t *testing.T) {
		s := Summarize([]models.Review{
			{Rating: 5, Approved: true},
			{Rating: 4, Approved: true},
			{Rating: 4, Approved: true},
			{Rating: 1, Approved: false},
		})
		require.NotNil(t, s.AverageRating)
		assert.Equal(t, 4.3, *s.AverageRating)
		assert.Equal(t, 3, s.TotalReviews)
	})
}
