// Package listing defines the marketplace listing model and the numeric
// coercion helpers used to normalize the loosely-typed values Vinted
// returns. Prices arrive as numbers, numeric strings with comma decimals,
// or currency-contaminated text; quantities are guessed from free-text
// titles. Both helpers are total: they never fail, they degrade to zero or
// absence.
package listing
