package google

import (
	"OpenAIConsole/internal/config"
	"testing"

	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
)

func TestBuildRequest(t *testing.T) {
	gc := config.Defaults().GoogleTTS

	req := BuildRequest("hello", gc)
	assert.Equal(t, "hello", req.GetInput().GetText())
	assert.Equal(t, gc.Voice, req.GetVoice().GetName())
	assert.Equal(t, ttspb.AudioEncoding_MP3, req.GetAudioConfig().GetAudioEncoding())
	assert.Equal(t, []string{gc.EffectsProfileID}, req.GetAudioConfig().GetEffectsProfileId())

	req = BuildRequest(" <speak>hi</speak>", gc)
	assert.Equal(t, " <speak>hi</speak>", req.GetInput().GetSsml())

	gc.InputType = "text"
	gc.EffectsProfileID = ""
	req = BuildRequest("<speak>hi</speak>", gc)
	assert.Equal(t, "<speak>hi</speak>", req.GetInput().GetText())
	assert.Empty(t, req.GetAudioConfig().GetEffectsProfileId())
}
