// Package pipeline sequences one demo run: resolve input → (optional) create
// test video → run demo → report artifacts.
//
// Every stage is synchronous and the first failure ends the run; later
// stages never start. All process spawning and filesystem access goes
// through [Deps] so a run can be tested without real executables.
package pipeline
