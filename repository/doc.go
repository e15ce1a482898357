// Package repository implements the entity repositories over the
// manifest tables: flights, bookings, passengers, and the
// flight-booking junction.
//
// Each repository decodes raw store items into typed records at this
// boundary and fails loudly on shape mismatches; nothing above it sees
// an attribute value. Readers reject empty key arguments before
// issuing a request. Write paths validate their inputs with the
// validate package first.
package repository
