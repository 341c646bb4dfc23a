package trace

// multiSink fans records out to several sinks in order.
type multiSink []Sink

// MultiSink combines sinks into one. Nil sinks are skipped; with no usable
// sinks it returns nil.
func MultiSink(sinks ...Sink) Sink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Trace implements Sink.
func (m multiSink) Trace(component, message string) {
	for _, s := range m {
		s.Trace(component, message)
	}
}
