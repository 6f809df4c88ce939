package summarize

import "fmt"

const (
	// qualityConstraints is appended to every caller-facing instruction.
	qualityConstraints = "Do not make spelling mistakes. Do not include any introductory preamble."

	// chunkInstruction drives the per-chunk map passes.
	chunkInstruction = "Extract all key information and main points from the following text. Lose no detail."
)

func compositeInstruction(instruction string) string {
	return instruction + "\n" + qualityConstraints
}

func combineInstruction(instruction string) string {
	return fmt.Sprintf(
		"Combine the following partial summaries into one cohesive summary. "+
			"Then additionally apply the following instruction to the result: %s\n%s",
		instruction,
		qualityConstraints,
	)
}
