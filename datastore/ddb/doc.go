/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "USER#{Id}")
  - Automatic EntityType injection, used by List to select one entity type
  - NotFoundError on missing items for GetOne and Delete

Macro Expansion:
Keys are declared per store with a KeyTemplate. On Put, macros are replaced
with the entity's marshaled attribute values; on GetOne and Delete, every
macro is replaced with the string key:

	keys := ddb.KeyTemplate{
	    "PK": "USER#{Id}",   // Becomes "USER#42"
	    "SK": "USER#{Id}",
	}
	store, err := ddb.NewDynamodbDataStore[User](ctx, accessKey, secretKey, region, table, keys)

The store talks to DynamoDB through the Client interface, which
*dynamodb.Client satisfies; tests substitute an in-memory fake.
*/
package ddb
