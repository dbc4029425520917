package stream

import (
	"log/slog"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/aboutface/document"
)

// Streamer publishes token frames over MQTT.
type Streamer struct {
	log    *slog.Logger
	config Config
	client mqtt.Client
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(log *slog.Logger, config Config, client mqtt.Client) *Streamer {
	s := new(Streamer)
	s.log = log
	s.config = config
	s.client = client
	return s
}

// SendFrame publishes the current state of scene. The JSON frame goes to the
// frames topic; the binary encoding goes to the binary topic when one is configured.
func (s *Streamer) SendFrame(scene *document.Scene) error {
	f := NewFrame(scene)

	payload, err := f.Payload()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.config.Topics.Frames, 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		s.log.Warn("frame publish failed", "topic", s.config.Topics.Frames, "error", err)
		return err
	}

	if s.config.Topics.Binary == "" {
		return nil
	}
	b, _ := f.MarshalBinary()
	token = s.client.Publish(s.config.Topics.Binary, 0, false, b)
	token.Wait()
	return token.Error()
}
