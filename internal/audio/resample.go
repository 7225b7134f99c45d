package audio

// Resample converts samples from inputRate to outputRate using linear
// interpolation. Quality is sufficient for the energy and voicing
// heuristics downstream; clips sent to the transcription service go out
// in their original container, so STT never sees this path.
func Resample(samples []float64, inputRate, outputRate int) []float64 {
	if inputRate == outputRate || len(samples) == 0 {
		return samples
	}

	ratio := float64(outputRate) / float64(inputRate)
	outputLength := int(float64(len(samples)) * ratio)
	output := make([]float64, outputLength)

	for i := 0; i < outputLength; i++ {
		srcPos := float64(i) / ratio

		idx0 := int(srcPos)
		idx1 := idx0 + 1
		if idx1 >= len(samples) {
			idx1 = len(samples) - 1
		}

		fraction := srcPos - float64(idx0)
		output[i] = samples[idx0]*(1.0-fraction) + samples[idx1]*fraction
	}

	return output
}
