package trafikverket

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/train-stream/store"
)

// Envelope is the nested response shape shared by the subscription exchange
// and every pushed stream message.
type Envelope struct {
	Response struct {
		Result []ResultItem `json:"RESULT"`
	} `json:"RESPONSE"`
}

// ResultItem is one result entry in an envelope. The subscription exchange
// carries Info; stream messages carry record arrays.
type ResultItem struct {
	Info *struct {
		SSEURL string `json:"SSEURL"`
	} `json:"INFO,omitempty"`
	TrainPosition     []RawPosition     `json:"TrainPosition,omitempty"`
	TrainAnnouncement []RawAnnouncement `json:"TrainAnnouncement,omitempty"`
}

// RawPosition is a TrainPosition entry as pushed by the provider, before
// structural validation.
type RawPosition struct {
	Train struct {
		OperationalTrainNumber string `json:"OperationalTrainNumber" validate:"required"`
		AdvertisedTrainNumber  string `json:"AdvertisedTrainNumber"`
	} `json:"Train"`
	Position struct {
		WGS84 string `json:"WGS84"`
	} `json:"Position"`
	Bearing   float64 `json:"Bearing"`
	Speed     float64 `json:"Speed"`
	TimeStamp string  `json:"TimeStamp" validate:"required"`
}

// RawAnnouncement is a TrainAnnouncement entry as pushed by the provider.
type RawAnnouncement struct {
	ActivityType              string     `json:"ActivityType"`
	AdvertisedTimeAtLocation  string     `json:"AdvertisedTimeAtLocation"`
	AdvertisedTrainIdent      string     `json:"AdvertisedTrainIdent" validate:"required"`
	LocationSignature         string     `json:"LocationSignature"`
	TimeAtLocationWithSeconds string     `json:"TimeAtLocationWithSeconds"`
	FromLocation              []Location `json:"FromLocation"`
	ToLocation                []Location `json:"ToLocation"`
}

// Location is a location reference within an announcement.
type Location struct {
	LocationName string `json:"LocationName"`
}

var validate = validator.New()

// ToRecord validates the raw payload and converts it to a store row.
func (rp *RawPosition) ToRecord() (store.Position, error) {
	if err := validate.Struct(rp); err != nil {
		return store.Position{}, err
	}
	return store.Position{
		OperationalTrainNumber: rp.Train.OperationalTrainNumber,
		AdvertisedTrainNumber:  rp.Train.AdvertisedTrainNumber,
		Bearing:                rp.Bearing,
		Speed:                  rp.Speed,
		PositionWGS84:          rp.Position.WGS84,
		TimeStamp:              rp.TimeStamp,
	}, nil
}

// ToRecord validates the raw payload and converts it to a store row.
// Location lists are flattened to comma-joined signature strings.
func (ra *RawAnnouncement) ToRecord() (store.Announcement, error) {
	if err := validate.Struct(ra); err != nil {
		return store.Announcement{}, err
	}
	return store.Announcement{
		AdvertisedTrainIdent:     ra.AdvertisedTrainIdent,
		ActivityType:             ra.ActivityType,
		LocationSignature:        ra.LocationSignature,
		FromLocation:             joinLocations(ra.FromLocation),
		ToLocation:               joinLocations(ra.ToLocation),
		AdvertisedTimeAtLocation: ra.AdvertisedTimeAtLocation,
		TimeAtLocation:           ra.TimeAtLocationWithSeconds,
	}, nil
}

func joinLocations(locs []Location) string {
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		if l.LocationName != "" {
			names = append(names, l.LocationName)
		}
	}
	return strings.Join(names, ",")
}
