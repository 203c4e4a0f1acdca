package diarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/skill-flow/internal/transcriber"
)

const (
	chunkSeconds  = 2.0
	minChunkRatio = 0.5
	mergeGap      = 1.0
)

type chunk struct {
	start, end float64
	label      int
}

func (d *acousticDiarizer) Diarize(ctx context.Context, req Request) []Segment {
	if isBlank(req.Transcript) {
		d.logger.Debug(ctx, "Empty transcript, single speaker segment")
		return singleSpeaker(req.Transcript)
	}

	samples, rate, err := d.source.Samples(req.AudioPath)
	if err != nil {
		d.logger.Warn(ctx, "Acoustic diarization could not read audio, using single speaker: %v", err)
		return singleSpeaker(req.Transcript)
	}

	chunks, features := chunkFeatures(samples, rate)
	if len(chunks) < 2 {
		d.logger.Debug(ctx, "Only %d usable audio chunks, single speaker segment", len(chunks))
		return singleSpeaker(req.Transcript)
	}

	maxSpeakers := req.MaxSpeakers
	if maxSpeakers <= 0 {
		maxSpeakers = DefaultMaxSpeakers
	}
	labels := kmeans(standardize(features), maxSpeakers)
	for i := range chunks {
		chunks[i].label = labels[i]
	}

	segments := mergeChunks(chunks)
	assignWords(segments, wordsFor(req))

	d.logger.Info(ctx, "Generated %d speaker segments from %d audio chunks", len(segments), len(chunks))
	return segments
}

// chunkFeatures splits samples into fixed windows and returns the mean MFCC
// of each. A trailing window shorter than half the size is dropped.
func chunkFeatures(samples []float64, rate int) ([]chunk, [][]float64) {
	if rate <= 0 {
		return nil, nil
	}
	size := int(chunkSeconds * float64(rate))
	total := float64(len(samples)) / float64(rate)
	extractor := newMFCCExtractor(rate)

	var chunks []chunk
	var features [][]float64
	for i := 0; i < len(samples); i += size {
		end := min(i+size, len(samples))
		if float64(end-i) < float64(size)*minChunkRatio {
			continue
		}
		chunks = append(chunks, chunk{
			start: float64(i) / float64(rate),
			end:   min(float64(i+size)/float64(rate), total),
		})
		features = append(features, extractor.mean(samples[i:end]))
	}
	return chunks, features
}

// mergeChunks joins consecutive chunks of the same speaker separated by
// less than mergeGap seconds.
func mergeChunks(chunks []chunk) []Segment {
	var out []Segment
	for _, c := range chunks {
		speaker := speakerLabel(c.label)
		if n := len(out); n > 0 && out[n-1].Speaker == speaker && c.start-out[n-1].EndTime < mergeGap {
			out[n-1].EndTime = c.end
			continue
		}
		out = append(out, Segment{Speaker: speaker, StartTime: c.start, EndTime: c.end})
	}
	return out
}

func speakerLabel(label int) string {
	return fmt.Sprintf("Speaker %d", label+1)
}

// wordsFor returns the transcript's word timings, synthesizing uniform ones
// when the transcript came without them.
func wordsFor(req Request) []transcriber.WordTimestamp {
	if len(req.Transcript.WordTimestamps) > 0 {
		return req.Transcript.WordTimestamps
	}
	return transcriber.InterpolateWords(req.Transcript.Text, req.Duration)
}

// assignWords places each word in the segment containing its midpoint.
// Words past the last segment go to the last segment.
func assignWords(segments []Segment, words []transcriber.WordTimestamp) {
	if len(segments) == 0 {
		return
	}
	texts := make([][]string, len(segments))
	s := 0
	for _, w := range words {
		mid := (w.StartTime + w.EndTime) / 2
		for s < len(segments)-1 && mid >= segments[s].EndTime {
			s++
		}
		texts[s] = append(texts[s], w.Word)
	}
	for i := range segments {
		segments[i].Text = strings.Join(texts[i], " ")
	}
}
