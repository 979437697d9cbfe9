// Package walk provides depth-first traversal over the part tree of a parsed
// message.
package walk

import "github.com/zostay/go-mailsig/message"

// Processor is a callback passed to AndProcess to do any kind of generic
// processing of a message and its sub-parts.
//
// The Processor is given a part and the ancestry of the part. If len(parents)
// is zero, this is the part AndProcess was called upon, which might not be
// the root message.
//
// The Processor may return an error to cause AndProcess to terminate
// immediately and return that error.
type Processor func(part message.Part, parents []message.Part) error

// AndProcess walks the part tree of a message in depth-first pre-order and
// calls the given Processor for each part found, the part itself first. It
// terminates once all parts have been processed and returns nil. If the
// Processor returns an error, it terminates early and returns that error.
func AndProcess(processor Processor, msg message.Part) error {
	parents := make([]message.Part, 0, 10)
	return andProcess(processor, msg, parents)
}

func andProcess(
	processor Processor,
	part message.Part,
	parents []message.Part,
) error {
	err := processor(part, parents)
	if err != nil {
		return err
	}

	if part.IsMultipart() {
		parents = append(parents, part)
		for _, subPart := range part.GetParts() {
			err := andProcess(processor, subPart, parents)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
