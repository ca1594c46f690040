package trafikverket

import (
	"fmt"
	"time"
)

// trainNumberPattern restricts both feeds to the monitored route classes:
// 22xx-29xx, 128x-129x and 522x-527x series train numbers.
const trainNumberPattern = `/^(?:2[2-9]\d\d|12[89]\d\d|52[2-7]\d\d)$/`

// BuildPositionQuery returns the TrainPosition subscription request. The
// lower-bound timestamp filter covers the latency between issuing the
// request and the stream being established. Pure given now.
func BuildPositionQuery(apiKey string, now time.Time, lookback time.Duration) string {
	since := now.Add(-lookback).UTC().Format(time.RFC3339)
	return fmt.Sprintf(`
<REQUEST>
  <LOGIN authenticationkey='%s' />
  <QUERY objecttype='TrainPosition' namespace='järnväg.trafikinfo' sseurl='true' schemaversion='1.1'>
    <FILTER>
      <GT name='TimeStamp' value='%s'/>
      <LIKE name='Train.AdvertisedTrainNumber' value='%s' />
    </FILTER>
    <INCLUDE>Bearing</INCLUDE>
    <INCLUDE>Position</INCLUDE>
    <INCLUDE>Speed</INCLUDE>
    <INCLUDE>TimeStamp</INCLUDE>
    <INCLUDE>Train</INCLUDE>
  </QUERY>
</REQUEST>`, apiKey, since, trainNumberPattern)
}

// BuildAnnouncementQuery returns the TrainAnnouncement subscription request.
// Same range semantics as the position query, but filtering on the
// string-typed AdvertisedTrainIdent and requiring a destination.
func BuildAnnouncementQuery(apiKey string, now time.Time, lookback time.Duration) string {
	since := now.Add(-lookback).UTC().Format(time.RFC3339)
	return fmt.Sprintf(`
<REQUEST>
  <LOGIN authenticationkey='%s' />
  <QUERY objecttype='TrainAnnouncement' orderby='AdvertisedTimeAtLocation' sseurl='true' schemaversion='1.6'>
    <FILTER>
      <LIKE name='AdvertisedTrainIdent' value='%s' />
      <GT name='TimeAtLocationWithSeconds' value='%s' />
      <EXISTS name='ToLocation' value='true' />
    </FILTER>
    <INCLUDE>ActivityType</INCLUDE>
    <INCLUDE>AdvertisedTimeAtLocation</INCLUDE>
    <INCLUDE>AdvertisedTrainIdent</INCLUDE>
    <INCLUDE>FromLocation</INCLUDE>
    <INCLUDE>LocationSignature</INCLUDE>
    <INCLUDE>ProductInformation</INCLUDE>
    <INCLUDE>TimeAtLocationWithSeconds</INCLUDE>
    <INCLUDE>ToLocation</INCLUDE>
  </QUERY>
</REQUEST>`, apiKey, trainNumberPattern, since)
}
