package sanitize

// DefaultContainerCap is the number of elements emitted per container level.
const DefaultContainerCap = 20

// DefaultCountLimit bounds how many elements of an Iterable without a known
// length are counted to report the remainder.
const DefaultCountLimit = 1000

// DefaultTimeLayout formats time.Time values in summaries.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// Policy holds the tuning values of a Sanitizer.
//
// None of these affect correctness; they trade completeness of the dump
// against its size.
type Policy struct {
	// ContainerCap is the number of elements emitted per container before
	// the remainder is summarized.
	ContainerCap int

	// CountLimit bounds counting of iterables with unknown length.
	CountLimit int

	// IncludeFields reports exported struct fields as accessors.
	IncludeFields bool

	// TimeLayout formats time.Time values in depth-exhausted summaries.
	TimeLayout string
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		ContainerCap:  DefaultContainerCap,
		CountLimit:    DefaultCountLimit,
		IncludeFields: true,
		TimeLayout:    DefaultTimeLayout,
	}
}

func (p Policy) normalized() Policy {
	if p.ContainerCap <= 0 {
		p.ContainerCap = DefaultContainerCap
	}
	if p.CountLimit < p.ContainerCap {
		p.CountLimit = max(DefaultCountLimit, p.ContainerCap)
	}
	if p.TimeLayout == "" {
		p.TimeLayout = DefaultTimeLayout
	}
	return p
}
