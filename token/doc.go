// Package token provides the token and category vocabularies built on the
// numbered interning core.
//
// A Manager interns surface forms as Token entities; a CategoryManager
// interns tag names as Category entities. Both assign dense ids in
// registration order and deduplicate by content, so equal text always
// resolves to the same canonical instance.
//
// # Miss Handling
//
// The miss discipline is chosen at construction:
//
//	strict := token.NewManager()                                  // miss is absence
//	unk := token.NewManager(token.WithSentinel("<unk>"))          // miss is <unk>
//	tpl := token.NewManager(token.WithTemplate("<unk>", fold))    // miss retries the template
//
// Sentinel and template managers pre-register their unknown surface, so the
// unknown token is a real entity with id 0 and always usable as a model
// feature.
//
// # Categories
//
// CategoryManager broadens the read-only lookup: a miss on a subtyped tag
// such as "NNP-company" falls back to the base tag before the '-'. Assignment
// is unaffected; registering the subtyped tag still creates its own entity.
package token
