/*Package cnv implements deduplication of copy-number-variant calls: a
  reciprocal-overlap predicate, a connected-components clustering of calls
  that represent the same underlying variant, and a merge of each cluster
  into one call spanning the union of its members.
  The package is purely computational; reading CNV tables and formatting
  results live in the collapse package.
*/
package cnv
