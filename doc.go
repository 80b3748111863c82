// Package lazymap applies a function to the elements of a lazy stream in parallel,
// while only ever holding a bounded window of elements in memory.
//
// Streams are constructed by creating a ProducerFunc, which can produce elements from slices,
// channels, iterators, or any arbitrary source. Producers are lazy: a new element is produced
// only after the previous one has been consumed, so a source whose elements are expensive
// to keep around (decoded images, parsed records) is never materialized as a whole.
//
// Elements are drawn from the producer in windows of a fixed size. Each window is handed to a
// pool of workers, which apply a TransformFunc to every element of the window concurrently.
// Once the whole window has completed, its results are returned in the same order as the
// elements were produced, and only then is the next window drawn.
//
// LazyMap runs a stream to completion and returns all results. LazyIMap returns Windows, an
// iterator that computes one window of results per call to Next. EachWindow and ReduceWindows
// consume result windows with consumer and accumulator functions.
//
// The number of workers is configured using WithWorkers: a positive value is used as is, zero
// uses all available CPUs, and a negative value adds its magnitude to the number of available CPUs.
// The window size defaults to the number of workers and can be set using WithWindowSize.
//
// If the transform fails for any element, the whole operation fails. The worker pool is always
// shut down before the error is returned to the caller.
package lazymap
