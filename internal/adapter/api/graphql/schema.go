package graphql

// SDL is the contact API schema.
//
// The country, timezone, and datetime fields are derived per read from the
// external services, never from the stored record, so the schema's answers
// always reflect the services' current data.
const SDL = `
	type Contact {
		id: ID!
		name: String!
		phone: String!
		country: String!
		timezone: String!
		datetime: String!
	}

	type Query {
		getContact(id: ID!): Contact!
		getContacts: [Contact!]!
	}

	type Mutation {
		addContact(name: String!, phone: String!): Contact!
		updateContact(id: ID!, name: String, phone: String): Contact!
		deleteContact(id: ID!): Boolean!
	}
`
