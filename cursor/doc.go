// Package cursor provides the single-step iteration primitive seqkit is built on.
//
// Producers implement the two-method [Stepper] contract: TryAdvance moves to
// the next element and reports whether one exists, Current reads it. [New]
// adapts a Stepper into a [Cursor], the pull contract consumers use:
//
//	c := cursor.New(myStepper)
//	defer c.Close()
//	for {
//	    ok, err := c.HasNext()
//	    if err != nil || !ok {
//	        break
//	    }
//	    v, _ := c.Next()
//	    fmt.Println(v)
//	}
//
// HasNext is idempotent: however often it is called, the producer advances at
// most once per position. Next performs the advance itself when HasNext was
// not called, and returns errors.ErrExhausted past the end.
//
// Cursors are single-owner. Use [Synchronized] to share one between
// goroutines.
package cursor
