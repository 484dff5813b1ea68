package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFetchPlaceDetails_Success(t *testing.T) {
	// Arrange
	client := NewPlacesApiClientMock()

	// Act
	response, err := client.FetchPlaceDetails("ChIJtestplace123", "")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, response)

	assert.Equal(t, "ChIJtestplace123", response.ID)
	assert.Equal(t, "Local Business", response.DisplayName.Text)
	assert.Equal(t, "(555) 123-4567", response.NationalPhoneNumber)
	assert.Equal(t, "https://maps.google.com", response.GoogleMapsURI)

	// The sample schedule covers every day of the week.
	require.NotNil(t, response.RegularOpeningHours)
	assert.Len(t, response.RegularOpeningHours.Periods, 7)
	for _, period := range response.RegularOpeningHours.Periods {
		assert.Nil(t, period.Close, "sample periods are open-ended")
	}
}

func TestMockFetchPlaceDetails_EmptyID(t *testing.T) {
	client := NewPlacesApiClientMock()

	_, err := client.FetchPlaceDetails("", "")
	assert.ErrorIs(t, err, ErrInvalidPlaceID)
}
