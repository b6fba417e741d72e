package chat

// startWriter drains the session's outbound queue onto its transport in
// its own goroutine, so a peer that stops reading never stalls the event
// loop. The loop closes the queue during teardown; the writer flushes
// what remains and closes the transport.
func startWriter(tr transport, out <-chan []byte) {
	go func() {
		defer tr.Close()
		for line := range out {
			// Best-effort. If the connection breaks, the reader side
			// notices and detaches the session.
			if err := tr.WriteLine(line); err != nil {
				return
			}
		}
	}()
}
