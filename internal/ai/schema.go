package ai

// swapsSchemaDescription describes the ClickHouse schema used for NL→SQL prompting.
//
// Keeping it in sync with the actual ClickHouse table definition in init.sql.
const swapsSchemaDescription = `
Database: sui
Table: swaps

Columns:
  - digest     String        -- Sui transaction digest (unique id)
  - timestamp  DateTime      -- Time the swap was executed (UTC)
  - pair       String        -- Trading pair, e.g. "SUI/USDC"
  - asset_in   String        -- Coin type sold by the user
  - asset_out  String        -- Coin type bought by the user
  - amount_in  Float64       -- Amount of asset_in, in display units
  - amount_out Float64       -- Estimated amount of asset_out, in display units
  - price      Float64       -- Implied rate: amount_out / amount_in (asset_out per asset_in)
  - min_out    Float64       -- Slippage-protected minimum output the order carried
  - pool       String        -- DeepBook pool object id
  - venue      String        -- Trading venue (e.g. "DeepBook")

Notes:
  - For volume calculations you can SUM(amount_out) or SUM(amount_in) depending on the unit you care about.
  - Time filters should use timestamp, e.g. timestamp >= now() - INTERVAL 24 HOUR.
  - A wide gap between amount_out and min_out means the order tolerated more slippage.
`
